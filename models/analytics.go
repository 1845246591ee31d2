package models

import "time"

// AnalyticsReport is one weekly rollup of booking activity, written by the
// scheduled reporting job.
type AnalyticsReport struct {
	Week                string    `bson:"week" json:"week"` // "YYYY-MM-DD / YYYY-MM-DD" window
	TotalBookings       int       `bson:"totalBookings" json:"totalBookings"`
	CompletedBookings   int       `bson:"completedBookings" json:"completedBookings"`
	TotalRevenue        float64   `bson:"totalRevenue" json:"totalRevenue"`
	AverageSessionValue float64   `bson:"averageSessionValue" json:"averageSessionValue"`
	GeneratedAt         time.Time `bson:"generatedAt" json:"generatedAt"`
}
