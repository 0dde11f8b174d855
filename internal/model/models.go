package model

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&WasteCategory{},
		&WasteCollection{},
		&WasteCollectionItem{},
		&Transaction{},
		&TransactionItem{},
		&Reward{},
		&RewardRedemption{},
		&Notification{},
	}
}
