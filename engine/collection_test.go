package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdesk/models"
)

func containerEditor(rows *[]models.Container) *Editor[models.Container] {
	return NewEditor(rows, ValidateContainerDraft, nil)
}

func TestEditorAddConfirm(t *testing.T) {
	var rows []models.Container
	ed := containerEditor(&rows)

	draft := ed.Add()
	assert.Equal(t, StateDraftingNew, ed.State())
	draft.ContainerNo = "MSKU1234567"
	draft.Weight = 1000

	require.Empty(t, ed.Confirm())
	assert.Equal(t, StateIdle, ed.State())
	assert.Nil(t, ed.Draft())
	require.Len(t, rows, 1)
	assert.Equal(t, "MSKU1234567", rows[0].ContainerNo)
}

func TestEditorConfirmBlockedByValidation(t *testing.T) {
	var rows []models.Container
	ed := containerEditor(&rows)

	ed.Add() // container number missing
	violations := ed.Confirm()
	require.NotEmpty(t, violations)
	assert.Equal(t, "containerNo", violations[0].Field)

	// Draft stays open for correction, collection untouched.
	assert.Equal(t, StateDraftingNew, ed.State())
	assert.Empty(t, rows)

	ed.Draft().ContainerNo = "MSKU1234567"
	assert.Empty(t, ed.Confirm())
	assert.Len(t, rows, 1)
}

func TestEditorEditIsStaged(t *testing.T) {
	rows := []models.Container{{ContainerNo: "MSKU1234567", SealNo: "SL-1"}}
	ed := containerEditor(&rows)

	draft := ed.Edit(0)
	require.NotNil(t, draft)
	draft.SealNo = "SL-2"

	// Not committed yet.
	assert.Equal(t, "SL-1", rows[0].SealNo)

	require.Empty(t, ed.Confirm())
	assert.Equal(t, "SL-2", rows[0].SealNo)
	assert.Len(t, rows, 1, "edit replaces in place, never appends")
}

func TestEditorCancelDiscardsDraft(t *testing.T) {
	rows := []models.Container{{ContainerNo: "MSKU1234567", SealNo: "SL-1"}}
	ed := containerEditor(&rows)

	ed.Edit(0).SealNo = "SL-9"
	ed.Cancel()

	assert.Equal(t, "SL-1", rows[0].SealNo)
	assert.Nil(t, ed.Draft())
}

func TestEditorReopenSilentlyDiscards(t *testing.T) {
	rows := []models.Container{{ContainerNo: "MSKU1234567", SealNo: "SL-1"}}
	ed := containerEditor(&rows)

	ed.Edit(0).SealNo = "abandoned"
	draft := ed.Add()

	assert.Equal(t, "", draft.SealNo, "new draft starts empty")
	assert.Equal(t, "SL-1", rows[0].SealNo)
	assert.Equal(t, StateDraftingNew, ed.State())
}

func TestEditorEditOutOfRange(t *testing.T) {
	var rows []models.Container
	ed := containerEditor(&rows)
	assert.Nil(t, ed.Edit(0))
	assert.Nil(t, ed.Edit(-1))
}

func TestEditorDeleteImmediate(t *testing.T) {
	rows := []models.Container{
		{ContainerNo: "A"}, {ContainerNo: "B"}, {ContainerNo: "C"},
	}
	ed := containerEditor(&rows)

	require.True(t, ed.Delete(1))
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].ContainerNo)
	assert.Equal(t, "C", rows[1].ContainerNo)

	assert.False(t, ed.Delete(5))
}

func TestEditorDeleteShiftsOpenEdit(t *testing.T) {
	rows := []models.Container{
		{ContainerNo: "A"}, {ContainerNo: "B", SealNo: "SL-B"}, {ContainerNo: "C"},
	}
	ed := containerEditor(&rows)

	draft := ed.Edit(1)
	draft.SealNo = "SL-B2"

	// Deleting an earlier row shifts the edit target down.
	require.True(t, ed.Delete(0))
	require.Empty(t, ed.Confirm())
	assert.Equal(t, "SL-B2", rows[0].SealNo)
}

func TestEditorDeleteOfEditedRowDropsDraft(t *testing.T) {
	rows := []models.Container{{ContainerNo: "A"}, {ContainerNo: "B"}}
	ed := containerEditor(&rows)

	ed.Edit(1)
	require.True(t, ed.Delete(1))

	assert.Nil(t, ed.Draft())
	assert.Equal(t, StateIdle, ed.State())
}

func TestEditorOnCommitObservesAdds(t *testing.T) {
	var rows []models.Container
	var sawAdd bool
	ed := NewEditor(&rows, ValidateContainerDraft, func(row *models.Container, added bool) {
		sawAdd = added
	})

	ed.Add().ContainerNo = "MSKU1234567"
	require.Empty(t, ed.Confirm())
	assert.True(t, sawAdd)

	ed.Edit(0)
	require.Empty(t, ed.Confirm())
	assert.False(t, sawAdd)
}
