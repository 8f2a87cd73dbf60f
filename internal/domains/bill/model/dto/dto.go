package dto

import (
	"hoteldesk/internal/domains/bill/model"
	"hoteldesk/shared"
	"hoteldesk/shared/constant"
	gDto "hoteldesk/shared/dto"
	gModel "hoteldesk/shared/model"
	"hoteldesk/shared/timezone"

	"github.com/google/uuid"
)

type GenerateBillRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

// ToModel builds an unpaid bill for the booking at the given total.
func (g *GenerateBillRequest) ToModel(user string, totalAmount float64) model.Bill {
	return model.Bill{
		ID:          uuid.NewString(),
		BookingID:   g.BookingID,
		TotalAmount: totalAmount,
		GeneratedAt: timezone.Now(),
		Paid:        false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BillResponse struct {
	ID          string  `json:"id"`
	BookingID   string  `json:"booking_id"`
	TotalAmount float64 `json:"total_amount"`
	GeneratedAt string  `json:"generated_at"`
	Paid        bool    `json:"paid"`
	PaidAt      *string `json:"paid_at,omitempty"`
	gDto.Metadata
}

func (r *BillResponse) FromModel(model model.Bill) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.TotalAmount = model.TotalAmount
	r.GeneratedAt = model.GeneratedAt.Format(constant.DateTimeFormat)
	r.Paid = model.Paid

	if model.PaidAt != nil {
		paidAt := model.PaidAt.Format(constant.DateTimeFormat)
		r.PaidAt = &paidAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetBillsResponse) FromModels(models []model.Bill, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bills = make([]BillResponse, len(models))
	for i, mod := range models {
		r.Bills[i].FromModel(mod)
	}
}

type RevenueResponse struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalUnpaid  float64 `json:"total_unpaid"`
}

type MonthlyRevenueResponse struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

// BillEvent is the payload published to the bill events topic.
type BillEvent struct {
	Type        string  `json:"type"`
	BillID      string  `json:"bill_id"`
	BookingID   string  `json:"booking_id"`
	TotalAmount float64 `json:"total_amount"`
	OccurredAt  string  `json:"occurred_at"`
}

const (
	EventBillGenerated = "bill.generated"
	EventBillPaid      = "bill.paid"
)

func NewBillEvent(eventType string, bill model.Bill) BillEvent {
	return BillEvent{
		Type:        eventType,
		BillID:      bill.ID,
		BookingID:   bill.BookingID,
		TotalAmount: bill.TotalAmount,
		OccurredAt:  timezone.Now().Format(constant.DateTimeFormat),
	}
}
