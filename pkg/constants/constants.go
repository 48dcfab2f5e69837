// Package constants provides shared constants used throughout the vstmap codebase.
// This includes inventory column names, file permissions and CLI defaults
// that must stay consistent between the reader, the engine and the writers.
package constants

// Inventory column names, exactly as they appear in source and report headers.
const (
	ColumnCompany    = "Company"
	ColumnSoftware   = "Software"
	ColumnVersion    = "Version"
	ColumnSDKVersion = "SDK Version"
	ColumnType       = "Type"

	// ColumnCollaboration holds the overall readiness verdict in reports.
	ColumnCollaboration = "Collaboration Material"

	// ColumnRemarks lists stale sources and their original versions in reports.
	ColumnRemarks = "Remarks"
)

// RequiredColumns are the columns every source must declare in its header.
// Version is optional and read as empty when absent.
func RequiredColumns() []string {
	return []string{ColumnCompany, ColumnSoftware, ColumnSDKVersion, ColumnType}
}

// InventoryColumns is the column order written by the inventory exporter.
func InventoryColumns() []string {
	return []string{ColumnCompany, ColumnSoftware, ColumnVersion, ColumnSDKVersion, ColumnType}
}

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Defaults
const (
	// DefaultLoadConcurrency bounds how many source files are read at once.
	DefaultLoadConcurrency = 4

	// DefaultExportFile is where the exporter writes when no output is given.
	DefaultExportFile = "plugins.csv"

	// DBPathFile holds the plugin database location for the exporter.
	DBPathFile = ".db_path"

	// ConfigName is the config file name searched for in $HOME and the working directory.
	ConfigName = ".vstmap"

	// EnvPrefix prefixes every environment variable read through viper.
	EnvPrefix = "VSTMAP"
)
