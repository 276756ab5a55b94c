package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"freightdesk/models"
	"freightdesk/repository"
)

// GenerateJobOrderPDF renders the job order sheet (office and file copies)
// through headless Chrome. Each copy stays whole on the page.
func GenerateJobOrderPDF(repo *repository.PDFRepository, jobID int64) ([]byte, error) {
	company, err := repo.GetCompanyForPDF()
	if err != nil {
		return nil, err
	}

	job, err := repo.GetJobForPDF(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	formattedDate := "-"
	if !job.CreatedAt.IsZero() {
		formattedDate = job.CreatedAt.Format("02-Jan-2006")
	}

	contacts := ""
	if company != nil {
		for _, p := range company.Phones {
			contacts += p.Number + "(" + p.Label + "), "
		}
		if len(contacts) > 2 {
			contacts = contacts[:len(contacts)-2]
		}
	}

	var invoiceTotal float64
	for _, inv := range job.Invoices {
		for _, it := range inv.Items {
			invoiceTotal += it.TotalValue
		}
	}

	copyTitles := []string{"Office Copy", "Customs Copy", "File Copy"}

	tmpl, err := template.ParseFiles("templates/job_order_template.html")
	if err != nil {
		return nil, err
	}

	var fullHTML bytes.Buffer
	for _, title := range copyTitles {
		data := models.JobOrderPDFData{
			Company:        company,
			Job:            job,
			Contacts:       contacts,
			Date:           formattedDate,
			InvoiceTotal:   invoiceTotal,
			TotalWords:     NumberToCurrencyWords(invoiceTotal),
			CopyTitle:      title,
			ContainerCount: len(job.Containers),
			InvoiceCount:   len(job.Invoices),
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, err
		}

		fullHTML.WriteString("<div class='job-copy'>")
		fullHTML.Write(buf.Bytes())
		fullHTML.WriteString("</div>")
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.job-copy {
			page-break-inside: avoid;
			border: none;
		}
		</style>
		</head>
		<body>` + fullHTML.String() + `</body></html>`

	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "job_order_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
