package reports

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// amountPrinter renders amounts with digit grouping for spreadsheet
// consumers, e.g. 1,234,567.89.
var amountPrinter = message.NewPrinter(language.English)

func amount(v float64) string {
	return amountPrinter.Sprintf("%.2f", v)
}

const csvDateFormat = "2006-01-02"

// WriteSalesCSV streams a sales report as CSV, summary row last.
func WriteSalesCSV(w io.Writer, report *SalesReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Invoice", "Customer", "Date", "Total", "Paid", "Balance", "Profit", "Status"}); err != nil {
		return err
	}
	for _, r := range report.Rows {
		record := []string{
			r.InvoiceNumber,
			r.CustomerName,
			r.SaleDate.Format(csvDateFormat),
			amount(r.TotalAmount),
			amount(r.PaidAmount),
			amount(r.BalanceAmount),
			amount(r.TotalProfit),
			string(r.PaymentStatus),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	totals := []string{
		"TOTAL", "", "",
		amount(report.Summary.TotalRevenue),
		amount(report.Summary.TotalPaid),
		amount(report.Summary.TotalDue),
		amount(report.Summary.TotalProfit),
		"",
	}
	if err := cw.Write(totals); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WritePurchasesCSV streams a purchases report as CSV, summary row last.
func WritePurchasesCSV(w io.Writer, report *PurchasesReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Purchase", "Supplier", "Date", "Total", "Paid", "Balance", "Status"}); err != nil {
		return err
	}
	for _, r := range report.Rows {
		record := []string{
			r.PurchaseNumber,
			r.SupplierName,
			r.PurchaseDate.Format(csvDateFormat),
			amount(r.TotalAmount),
			amount(r.PaidAmount),
			amount(r.BalanceAmount),
			string(r.PaymentStatus),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	totals := []string{
		"TOTAL", "", "",
		amount(report.Summary.TotalAmount),
		amount(report.Summary.TotalPaid),
		amount(report.Summary.TotalDue),
		"",
	}
	if err := cw.Write(totals); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteStockCSV streams the stock report as CSV.
func WriteStockCSV(w io.Writer, report *StockReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"SKU", "Name", "Category", "Unit", "Stock", "Min Level", "MRP", "Stock Value", "Low"}); err != nil {
		return err
	}
	for _, r := range report.Rows {
		category := ""
		if r.Category != nil {
			category = *r.Category
		}
		low := ""
		if r.LowStock {
			low = "yes"
		}
		record := []string{
			r.SKU,
			r.Name,
			category,
			r.Unit,
			amountPrinter.Sprintf("%v", r.CurrentStock),
			amountPrinter.Sprintf("%v", r.MinStockLevel),
			amount(r.MRP),
			amount(r.StockValue),
			low,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
