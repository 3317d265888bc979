package payroll_test

import (
	"testing"

	"go-hrms/internal/payroll"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func TestCalculate_PolicyOrder(t *testing.T) {
	res := payroll.Calculate(payroll.Input{
		BaseSalary:    dec("30000"),
		DaysInMonth:   30,
		Attendance:    payroll.AttendanceTally{Present: 30},
		OvertimeHours: decPtr("10"),
		OvertimeRate:  decPtr("200"),
		HolidayPay:    dec("500"),
		Rules: payroll.Rules{
			TaxRatePercent: dec("5"),
			Deductions:     []payroll.DeductionRule{{Label: "Union", Value: dec("100")}},
		},
	})

	assert.Equal(t, "32500", res.Gross.String())
	assert.Equal(t, "100", res.DeductionsTotal.String())
	assert.Equal(t, "1620", res.TaxAmount.String())
	assert.Equal(t, "30780.00", res.FinalSalary.StringFixed(2))
}

func TestCalculate_Proration(t *testing.T) {
	rules := payroll.Rules{ProrateAttendance: true}

	t.Run("unmarked days count as absent", func(t *testing.T) {
		res := payroll.Calculate(payroll.Input{
			BaseSalary:  dec("30000"),
			DaysInMonth: 30,
			Attendance:  payroll.AttendanceTally{Present: 20, HalfDay: 2, Holiday: 2},
			Rules:       rules,
		})

		assert.Equal(t, 6, res.AbsentDays)
		// 30000 - 6*1000 - 2*500
		assert.Equal(t, "23000", res.ProratedBase.String())
		assert.Equal(t, "23000", res.FinalSalary.String())
	})

	t.Run("absent floors at zero", func(t *testing.T) {
		res := payroll.Calculate(payroll.Input{
			BaseSalary:  dec("28000"),
			DaysInMonth: 28,
			Attendance:  payroll.AttendanceTally{Present: 29},
			Rules:       rules,
		})

		assert.Zero(t, res.AbsentDays)
		assert.Equal(t, "28000", res.ProratedBase.String())
	})

	t.Run("full base without the flag", func(t *testing.T) {
		res := payroll.Calculate(payroll.Input{
			BaseSalary:  dec("30000"),
			DaysInMonth: 30,
		})

		assert.Equal(t, 30, res.AbsentDays)
		assert.Equal(t, "30000", res.ProratedBase.String())
	})
}

func TestCalculate_DefaultOvertime(t *testing.T) {
	res := payroll.Calculate(payroll.Input{
		BaseSalary:  dec("24000"),
		DaysInMonth: 30,
		Attendance:  payroll.AttendanceTally{Present: 30, OvertimeHours: dec("4")},
	})

	// 24000/30/8 = 100 per hour, times 1.5
	assert.Equal(t, "150", res.OvertimeRate.String())
	assert.Equal(t, "4", res.OvertimeHours.String())
	assert.Equal(t, "600", res.OvertimePay.String())
	assert.Equal(t, "24600", res.FinalSalary.String())
}

func TestCalculate_AdjustmentsAndPercentDeductions(t *testing.T) {
	res := payroll.Calculate(payroll.Input{
		BaseSalary:    dec("10000"),
		DaysInMonth:   31,
		OvertimeHours: decPtr("0"),
		Adjustments: []payroll.Adjustment{
			{Label: "Bonus", Amount: dec("1000")},
			{Label: "Advance recovery", Amount: dec("-500")},
		},
		Rules: payroll.Rules{
			TaxRatePercent: dec("10"),
			Deductions: []payroll.DeductionRule{
				{Label: "PF", Percent: true, Value: dec("12")},
				{Label: "Canteen", Value: dec("80.555")},
			},
		},
	})

	assert.Equal(t, "500", res.AdjustmentsTotal.String())
	assert.Equal(t, "10500", res.Gross.String())
	assert.Equal(t, "1260", res.Deductions[0].Amount.String())
	assert.Equal(t, "80.56", res.Deductions[1].Amount.String())
	// (10500 - 1340.56) = 9159.44; tax 915.944 -> 915.94
	assert.Equal(t, "915.94", res.TaxAmount.String())
	assert.Equal(t, "8243.5", res.FinalSalary.String())
}

func TestCalculate_NegativeGrossChargesNothing(t *testing.T) {
	res := payroll.Calculate(payroll.Input{
		BaseSalary:    dec("1000"),
		DaysInMonth:   30,
		Attendance:    payroll.AttendanceTally{Present: 30},
		OvertimeHours: decPtr("0"),
		Adjustments:   []payroll.Adjustment{{Label: "Advance recovery", Amount: dec("-3000")}},
		Rules: payroll.Rules{
			TaxRatePercent: dec("10"),
			Deductions:     []payroll.DeductionRule{{Label: "PF", Percent: true, Value: dec("10")}},
		},
	})

	assert.Equal(t, "-2000", res.Gross.String())
	assert.True(t, res.Deductions[0].Amount.IsZero())
	assert.True(t, res.TaxAmount.IsZero())
	assert.Equal(t, "-2000", res.FinalSalary.String())
}
