package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roomservice/database"
	"roomservice/models"
	"roomservice/services/notification"
	"roomservice/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *DefaultOrderService) CreateOrder(in OrderInput, now time.Time) (*models.Order, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	if in.QRCodeID == "" {
		return nil, utils.BadRequest("qrcodeId is required")
	}
	if in.RoomNumber == "" {
		return nil, utils.BadRequest("room number is required")
	}
	if len(in.Items) == 0 {
		return nil, utils.BadRequest("order must contain at least one item")
	}

	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if item.SubcategoryID == "" {
			return nil, utils.BadRequest("subcategoryId is required")
		}
		if item.Quantity < 1 || item.Quantity > MaxQuantity {
			return nil, utils.BadRequest(fmt.Sprintf("quantity must be between 1 and %d", MaxQuantity))
		}
		ids = append(ids, item.SubcategoryID)
	}

	qr, err := s.QRCodes.GetByID(in.QRCodeID)
	if err != nil {
		return nil, err
	}
	if qr == nil {
		return nil, utils.NotFound("QR code not found")
	}
	var locationName string
	if loc, err := s.Locations.GetByID(qr.Location); err != nil {
		return nil, err
	} else if loc != nil {
		locationName = loc.Location
	}

	subs, err := s.Subcategories.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Subcategory, len(subs))
	for _, sub := range subs {
		byID[sub.ID] = sub
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		sub, ok := byID[item.SubcategoryID]
		if !ok || !sub.IsActive {
			return nil, utils.BadRequest("item is not available: " + item.SubcategoryID)
		}
		price := decimal.NewFromFloat(s.Pricing.SafeResolve(sub.ID, sub.Price, sub.RawPriceSchedule, now)).Round(2)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		items = append(items, models.OrderItem{
			SubcategoryID: sub.ID,
			Name:          sub.Name,
			Quantity:      item.Quantity,
			Price:         price.InexactFloat64(),
		})
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		Items:         items,
		RoomNumber:    in.RoomNumber,
		OrderUserName: strings.TrimSpace(in.OrderUserName),
		OrderNote:     strings.TrimSpace(in.OrderNote),
		QRCodeID:      qr.ID,
		QRCodeLabel:   qr.Label,
		Location:      locationName,
		Status:        models.OrderPending,
		TotalPrice:    total.Round(2).InexactFloat64(),
	}
	if err := s.Orders.Create(order); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("order placed",
		zap.String("orderId", order.ID),
		zap.String("location", order.Location),
		zap.String("room", order.RoomNumber),
		zap.Float64("total", order.TotalPrice))
	s.publish(notification.EventNewOrder, order)
	return order, nil
}

func (s *DefaultOrderService) ListOrders(filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !models.ValidOrderStatus(filter.Status) {
		return nil, utils.BadRequest("invalid status")
	}
	return s.Orders.List(filter)
}

func (s *DefaultOrderService) UpdateStatus(id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, utils.BadRequest("invalid status")
	}
	order, err := s.Orders.UpdateStatus(id, status)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFound("order not found")
		}
		return nil, err
	}
	s.publish(notification.EventOrderStatusUpdated, models.OrderStatusEvent{OrderID: order.ID, Status: order.Status})
	return order, nil
}

func (s *DefaultOrderService) PurgeOlderThan(cutoff time.Time) (int64, error) {
	return s.Orders.DeleteOlderThan(cutoff)
}

func (s *DefaultOrderService) publish(event string, payload any) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(event, payload)
}
