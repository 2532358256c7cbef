package repository

import (
	"github.com/omni/bridge-orchestrator/db"
	"github.com/omni/bridge-orchestrator/entity"
	"github.com/omni/bridge-orchestrator/repository/postgres"
)

type Repo struct {
	BridgeRecords entity.BridgeRecordsRepo
}

func NewRepo(db *db.DB) *Repo {
	return &Repo{
		BridgeRecords: postgres.NewBridgeRecordsRepo("bridge_records", db),
	}
}
