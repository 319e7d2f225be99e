package models

// LoginCodeAlphabet and LoginCodeLength shape the audience login codes.
const (
	LoginCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	LoginCodeLength   = 6
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleJudge    Role = "judge"
	RoleAudience Role = "audience"
)

type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)
