package audit

type HistoryQuery struct {
	Limit int `query:"limit" default:"50" validate:"min=1,max=500"`
}
