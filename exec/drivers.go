package exec

// Database drivers registered for Open. The driver names line up with the
// dialect names used across the module.
import (
	_ "github.com/go-sql-driver/mysql" // mysql
	_ "github.com/lib/pq"              // postgres
	_ "modernc.org/sqlite"             // sqlite
)
