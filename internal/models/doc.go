// Package models contains the record types that flow through the discovery
// pipeline: Artist (cohort member), Album (transient catalog listing), and
// Track (discovered release), plus the SortMode and ReleasePrecision
// enumerations.
//
// Artist and Album records live only for the duration of one run. Track
// records outlive a run only as rows in the dated snapshot report.
package models
