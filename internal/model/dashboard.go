package model

// PlayerStats содержит агрегированные показатели участника.
type PlayerStats struct {
	PlayerID           int64   `json:"player_id"`
	PlayerName         string  `json:"player_name"`
	TotalEarned        float64 `json:"total_earned"`
	CompletedBonuses   int     `json:"completed_bonuses"`
	PendingBonusAmount float64 `json:"pending_bonus_amount"`
	PendingBonuses     int     `json:"pending_bonuses"`
}

// HouseholdStats содержит сумму показателей всех участников.
type HouseholdStats struct {
	TotalEarned        float64 `json:"total_earned"`
	CompletedBonuses   int     `json:"completed_bonuses"`
	PendingBonusAmount float64 `json:"pending_bonus_amount"`
	PendingBonuses     int     `json:"pending_bonuses"`
}

// UpcomingKind описывает тип ближайшего события.
type UpcomingKind string

const (
	UpcomingDirectDeposit UpcomingKind = "direct_deposit_due"
	UpcomingBonusExpected UpcomingKind = "bonus_expected"
	UpcomingHoldingEnds   UpcomingKind = "holding_period_ends"
)

// UpcomingDate описывает ближайшую дату по отслеживаемому бонусу.
type UpcomingDate struct {
	PlayerID       int64        `json:"player_id"`
	TrackedBonusID int64        `json:"tracked_bonus_id"`
	BankName       string       `json:"bank_name"`
	BonusTitle     string       `json:"bonus_title"`
	Status         BonusStatus  `json:"status"`
	Kind           UpcomingKind `json:"kind"`
	Title          string       `json:"title"`
	Date           Date         `json:"date"`
}

// Dashboard содержит сводку по домохозяйству.
type Dashboard struct {
	Players       []PlayerStats  `json:"players"`
	Household     HouseholdStats `json:"household"`
	UpcomingDates []UpcomingDate `json:"upcoming_dates"`
}

// EmptyDashboard возвращает пустую сводку для отображения при недоступности API.
func EmptyDashboard() Dashboard {
	return Dashboard{
		Players:       []PlayerStats{},
		UpcomingDates: []UpcomingDate{},
	}
}

// Player возвращает показатели участника или нулевые значения, если его нет в сводке.
func (d Dashboard) Player(playerID int64) PlayerStats {
	for _, p := range d.Players {
		if p.PlayerID == playerID {
			return p
		}
	}
	return PlayerStats{PlayerID: playerID}
}
