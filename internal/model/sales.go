package model

import "time"

// SalesRecord is one department row from an uploaded sales report.
type SalesRecord struct {
	UploadedAt     time.Time
	DepartmentName string
	Department     int
	AverageCost    float64
	StockDays      float64
	PMP            float64
	TargetIA       float64
	Sales          float64
	Margin24       float64
	Margin25       float64
	VariationPct   float64
}

// DepartmentSlice is a per-department figure used by chart queries.
type DepartmentSlice struct {
	Department   int
	Sales        float64
	Margin24     float64
	Margin25     float64
	VariationPct float64
}

// SalesSummary aggregates the uploaded sales report for the dashboard.
type SalesSummary struct {
	TopDepartments  []DepartmentSlice
	TotalSales      float64
	MeanMargin24    float64
	MeanMargin25    float64
	MeanVariation   float64
	DepartmentCount int
}
