package payroll

import (
	"go-hrms/internal/shared/money"

	"github.com/shopspring/decimal"
)

const hoursPerDay = 8

var overtimeMultiplier = decimal.RequireFromString("1.5")

type Adjustment struct {
	Label  string
	Amount decimal.Decimal
}

type DeductionRule struct {
	Label   string
	Percent bool
	Value   decimal.Decimal
}

type Rules struct {
	TaxRatePercent    decimal.Decimal
	ProrateAttendance bool
	Deductions        []DeductionRule
}

type AttendanceTally struct {
	Present       int
	HalfDay       int
	Holiday       int
	OvertimeHours decimal.Decimal
}

type Input struct {
	BaseSalary  decimal.Decimal
	DaysInMonth int
	Attendance  AttendanceTally

	// Nil means derive from attendance and the base salary.
	OvertimeHours *decimal.Decimal
	OvertimeRate  *decimal.Decimal

	HolidayPay  decimal.Decimal
	Adjustments []Adjustment
	Rules       Rules
}

type Line struct {
	Label  string
	Amount decimal.Decimal
}

type Result struct {
	BaseSalary       decimal.Decimal
	ProratedBase     decimal.Decimal
	AbsentDays       int
	OvertimeHours    decimal.Decimal
	OvertimeRate     decimal.Decimal
	OvertimePay      decimal.Decimal
	HolidayPay       decimal.Decimal
	Adjustments      []Line
	AdjustmentsTotal decimal.Decimal
	Gross            decimal.Decimal
	Deductions       []Line
	DeductionsTotal  decimal.Decimal
	TaxRatePercent   decimal.Decimal
	TaxAmount        decimal.Decimal
	FinalSalary      decimal.Decimal
}

// Calculate is a pure function of its input. Each monetary line is rounded
// to cents before it is summed.
func Calculate(in Input) Result {
	days := in.DaysInMonth
	if days <= 0 {
		days = 30
	}

	absent := days - in.Attendance.Present - in.Attendance.HalfDay - in.Attendance.Holiday
	if absent < 0 {
		absent = 0
	}

	daily := in.BaseSalary.Div(decimal.NewFromInt(int64(days)))
	hourly := daily.Div(decimal.NewFromInt(hoursPerDay))

	basePay := in.BaseSalary
	if in.Rules.ProrateAttendance {
		basePay = basePay.
			Sub(daily.Mul(decimal.NewFromInt(int64(absent)))).
			Sub(daily.Mul(decimal.NewFromInt(int64(in.Attendance.HalfDay))).Div(decimal.NewFromInt(2)))
	}
	basePay = money.Round2(basePay)

	otHours := in.Attendance.OvertimeHours
	if in.OvertimeHours != nil {
		otHours = *in.OvertimeHours
	}
	otRate := hourly.Mul(overtimeMultiplier)
	if in.OvertimeRate != nil {
		otRate = *in.OvertimeRate
	}
	otRate = money.Round2(otRate)
	otPay := money.Round2(otHours.Mul(otRate))
	holidayPay := money.Round2(in.HolidayPay)

	res := Result{
		BaseSalary:     money.Round2(in.BaseSalary),
		ProratedBase:   basePay,
		AbsentDays:     absent,
		OvertimeHours:  money.Round2(otHours),
		OvertimeRate:   otRate,
		OvertimePay:    otPay,
		HolidayPay:     holidayPay,
		TaxRatePercent: in.Rules.TaxRatePercent,
	}

	for _, a := range in.Adjustments {
		amount := money.Round2(a.Amount)
		res.Adjustments = append(res.Adjustments, Line{Label: a.Label, Amount: amount})
		res.AdjustmentsTotal = res.AdjustmentsTotal.Add(amount)
	}

	res.Gross = basePay.Add(otPay).Add(holidayPay).Add(res.AdjustmentsTotal)

	for _, d := range in.Rules.Deductions {
		amount := d.Value
		if d.Percent {
			amount = money.Percent(money.ClampZero(res.Gross), d.Value)
		}
		amount = money.Round2(amount)
		res.Deductions = append(res.Deductions, Line{Label: d.Label, Amount: amount})
		res.DeductionsTotal = res.DeductionsTotal.Add(amount)
	}

	afterDeductions := res.Gross.Sub(res.DeductionsTotal)
	// A negative base would turn percentage charges into credits.
	res.TaxAmount = money.Round2(money.Percent(money.ClampZero(afterDeductions), in.Rules.TaxRatePercent))
	res.FinalSalary = money.Round2(afterDeductions.Sub(res.TaxAmount))
	return res
}
