package selection

import "github.com/m04kA/SMC-SlotService/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов
// Поддерживает *sql.DB и *sql.Tx через txmanager
type DBExecutor = txmanager.DBExecutor
