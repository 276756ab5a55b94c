package models

// JobOrderPDFData feeds the job order sheet template.
type JobOrderPDFData struct {
	Company        *CompanyProfile
	Job            *JobMaster
	Contacts       string
	Date           string
	InvoiceTotal   float64
	TotalWords     string
	CopyTitle      string
	ContainerCount int
	InvoiceCount   int
}
