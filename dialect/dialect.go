package dialect

// Dialect names for the shipped capability tables.
const (
	// MySQL is the MySQL/MariaDB dialect.
	MySQL = "mysql"
	// Postgres is the PostgreSQL dialect.
	Postgres = "postgres"
	// SQLite is the SQLite dialect.
	SQLite = "sqlite"
)
