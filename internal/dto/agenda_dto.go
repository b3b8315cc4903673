package dto

// CriarAgendaRequest creates or replaces the schedule for a date.
// Data uses the legacy dd/mm/yyyy key; horas use 24h HH:MM.
type CriarAgendaRequest struct {
	Data           string  `json:"data"            validate:"required,len=10"`
	HoraFechamento string  `json:"hora_fechamento" validate:"required,len=5"`
	HoraReabertura string  `json:"hora_reabertura" validate:"required,len=5"`
	Observacoes    *string `json:"observacoes"`
}

type OverrideAgendaRequest struct {
	Data   string `json:"data"   validate:"required,len=10"`
	Estado string `json:"estado" validate:"required,oneof=ativa pausada cancelada"`
}

type AgendaResponse struct {
	ID               string  `json:"id"`
	Data             string  `json:"data"`
	HoraFechamento   string  `json:"hora_fechamento"`
	HoraReabertura   string  `json:"hora_reabertura"`
	Estado           string  `json:"estado"`
	JaFechouHoje     bool    `json:"ja_fechou_hoje"`
	JaReabriuHoje    bool    `json:"ja_reabriu_hoje"`
	ContadorOverride int     `json:"contador_override"`
	Observacoes      *string `json:"observacoes"`
}
