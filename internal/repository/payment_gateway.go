package repository

import "context"

// 決済プロバイダに渡す1行分
type CheckoutLineItem struct {
	Name       string
	UnitAmount int64 // 最小通貨単位
	Quantity   int64
}

type CheckoutSession struct {
	ID  string
	URL string
}

// 決済セッションの作成だけを約束。失敗はそのまま呼び出し元へ返す。
type PaymentGateway interface {
	CreateSession(ctx context.Context, items []CheckoutLineItem) (CheckoutSession, error)
}
