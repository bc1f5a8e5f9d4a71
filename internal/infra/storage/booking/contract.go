package booking

import "github.com/m04kA/SMC-RoomScheduler/pkg/txmanager"

// DBExecutor *sql.DB или *sql.Tx; транзакцию из контекста достает txmanager.GetExecutor
type DBExecutor = txmanager.DBExecutor
