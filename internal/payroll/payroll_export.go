package payroll

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

var registerColumns = []string{
	"Employee code", "Employee", "Month", "Present", "Half-day", "Holiday", "Absent",
	"Base salary", "Base pay", "Overtime pay", "Holiday pay", "Adjustments",
	"Gross", "Deductions", "Tax", "Net pay",
}

func renderRegister(month string, rows []Payroll) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll " + month
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}

	header := make([]any, len(registerColumns))
	for i, h := range registerColumns {
		header[i] = h
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return nil, err
	}

	for i, p := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{
			p.EmployeeCode, p.EmployeeName, p.Month,
			p.PresentDays, p.HalfDays, p.HolidayDays, p.AbsentDays,
			p.BaseSalary.InexactFloat64(), p.ProratedBase.InexactFloat64(),
			p.OvertimePay.InexactFloat64(), p.HolidayPay.InexactFloat64(),
			p.AdjustmentsTotal.InexactFloat64(), p.GrossSalary.InexactFloat64(),
			p.DeductionsTotal.InexactFloat64(), p.TaxAmount.InexactFloat64(),
			p.FinalSalary.InexactFloat64(),
		}
		if err := sw.SetRow(cell, values); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
