package booking

import (
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя из dbmetrics
// Поддерживает *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
