package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobFilterKeysAreAllowlisted(t *testing.T) {
	repo := NewPostgresJobRepo(nil)

	_, err := repo.GetJobs(map[string]interface{}{"id=1; DROP TABLE job_master; --": 1}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported filter")

	_, err = repo.GetJobs(map[string]interface{}{"remarks": "x"}, false)
	assert.Error(t, err, "only indexed header columns are filterable")
}

func TestPartyFilterKeysAreAllowlisted(t *testing.T) {
	repo := NewPostgresPartyRepo(nil)

	_, err := repo.GetParties(map[string]interface{}{"name); DELETE FROM party; --": "x"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported filter")
}
