package dashboard

type AddMemberRequest struct {
	Name           string  `json:"name" binding:"required"`
	MonthlyPayment float64 `json:"monthlyPayment" binding:"required"`
	IsGoalkeeper   bool    `json:"isGoalkeeper"`
}

type UpdatePaymentRequest struct {
	MonthlyPayment float64 `json:"monthlyPayment" binding:"required"`
}

type PaymentStatusRequest struct {
	Month string `json:"month" binding:"required"`
	Paid  *bool  `json:"paid" binding:"required"`
}

type AddAbsenceRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Reason   string `json:"reason"`
}

type RemoveAbsenceRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	Date     string `json:"date" binding:"required"`
}

type AddEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

type AddCashEntryRequest struct {
	PlayerName  string  `json:"playerName" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description"`
}

type ExtraPlayerRequest struct {
	Name string `json:"name" binding:"required"`
}
