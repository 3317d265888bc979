package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

func renderPayslip(p Payroll) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+p.Month, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := [][2]string{
		{"Employee", p.EmployeeName},
		{"Employee code", p.EmployeeCode},
		{"Month", p.Month},
		{"Attendance", fmt.Sprintf("present %d, half-day %d, holiday %d, absent %d",
			p.PresentDays, p.HalfDays, p.HolidayDays, p.AbsentDays)},
	}
	for _, row := range header {
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	line := func(label string, amount decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(120, 7, label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, amount.StringFixed(2), "B", 1, "R", false, 0, "")
	}

	line("Base salary", p.BaseSalary, false)
	line("Base pay", p.ProratedBase, false)
	line(fmt.Sprintf("Overtime (%s h x %s)", p.OvertimeHours.StringFixed(2), p.OvertimeRate.StringFixed(2)), p.OvertimePay, false)
	line("Holiday pay", p.HolidayPay, false)
	for _, c := range p.Components {
		if c.Type == ComponentAdjustment {
			line(c.Name, c.Amount, false)
		}
	}
	line("Gross salary", p.GrossSalary, true)
	for _, c := range p.Components {
		if c.Type == ComponentDeduction {
			line("Less: "+c.Name, c.Amount, false)
		}
	}
	line(fmt.Sprintf("Less: tax (%s%%)", p.TaxRatePercent.StringFixed(2)), p.TaxAmount, false)
	line("Net pay", p.FinalSalary, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
