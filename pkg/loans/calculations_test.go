package loans

import (
	"math"
	"testing"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Reference consumer loan",
			principal:          140000,
			annualInterestRate: 11.84,
			termMonths:         60,
			expectedRange:      []float64{3100, 3120}, // Around 3102.92
		},
		{
			name:               "Four year loan",
			principal:          107770,
			annualInterestRate: 14,
			termMonths:         48,
			expectedRange:      []float64{2940, 2950}, // Around 2944.97
		},
		{
			name:               "Standard 30-year mortgage",
			principal:          240000,
			annualInterestRate: 6.0,
			termMonths:         360,
			expectedRange:      []float64{1438, 1440}, // Around 1438.92
		},
		{
			name:               "Zero interest fails",
			principal:          12000,
			annualInterestRate: 0.0,
			termMonths:         60,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Zero principal fails",
			principal:          0,
			annualInterestRate: 5.0,
			termMonths:         60,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "Zero term fails",
			principal:          10000,
			annualInterestRate: 5.0,
			termMonths:         0,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "NaN principal fails",
			principal:          math.NaN(),
			annualInterestRate: 5.0,
			termMonths:         12,
			expectedRange:      []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualInterestRate float64
		expected           float64
	}{
		{
			name:               "Reference first month",
			remainingPrincipal: 140000,
			annualInterestRate: 11.84,
			expected:           1381.33, // 140000 * 0.1184 / 12
		},
		{
			name:               "Standard interest",
			remainingPrincipal: 200000,
			annualInterestRate: 6.0,
			expected:           1000.0,
		},
		{
			name:               "Zero interest",
			remainingPrincipal: 10000,
			annualInterestRate: 0.0,
			expected:           0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.annualInterestRate)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestCalculateInsurancePayment(t *testing.T) {
	tests := []struct {
		name                string
		remainingPrincipal  float64
		annualInsuranceRate float64
		expected            float64
	}{
		{"Reference first month", 140000, 2.35, 274.17},
		{"Half balance", 70000, 2.35, 137.08},
		{"No insurance", 140000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInsurancePayment(tt.remainingPrincipal, tt.annualInsuranceRate)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInsurancePayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}
