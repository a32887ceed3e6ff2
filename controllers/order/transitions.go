package orderControllers

import "github.com/alfar-programer/Store-B-sub000/models"

// allowedTransitions is consulted only when strict transitions are enabled.
// Delivered and Cancelled have no way out.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

// CanTransition reports whether from -> to is in the table. Re-applying the
// current status is always allowed.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
