package model

import (
	"time"

	"github.com/google/uuid"
)

// AgendaCaixa statuses (manager-controlled).
const (
	AgendaAtiva     = "ativa"
	AgendaPausada   = "pausada"
	AgendaCancelada = "cancelada"
)

// DataAgendaLayout is the dd/mm/yyyy key format of the schedule table.
// Legacy format carried over from the desktop app — parse with time.Parse,
// never compare lexically.
const DataAgendaLayout = "02/01/2006"

// AgendaCaixa holds the automatic close/reopen schedule for one calendar
// date. JaFechouHoje/JaReabriuHoje are monotonic for the day: the evaluator
// sets each exactly once and they are only reset by creating a schedule for a
// new date.
type AgendaCaixa struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Data string    `gorm:"type:varchar(10);uniqueIndex;not null"` // dd/mm/yyyy
	// HoraFechamento / HoraReabertura in "15:04" 24h format
	HoraFechamento   string `gorm:"type:varchar(5);not null"`
	HoraReabertura   string `gorm:"type:varchar(5);not null"`
	Estado           string `gorm:"type:varchar(20);not null;default:'ativa'"`
	JaFechouHoje     bool   `gorm:"not null;default:false"`
	JaReabriuHoje    bool   `gorm:"not null;default:false"`
	ContadorOverride int    `gorm:"not null;default:0"`
	CriadoPor        uuid.UUID `gorm:"type:uuid;not null"`
	Observacoes      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (AgendaCaixa) TableName() string { return "agendas_caixa" }
