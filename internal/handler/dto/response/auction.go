package response

import (
	"car-auction/internal/usecase/commands"
	"car-auction/internal/usecase/queries"
)

type AuctionResponse struct {
	*queries.AuctionView
}

func FromAuctionView(v *queries.AuctionView) *AuctionResponse {
	return &AuctionResponse{AuctionView: v}
}

type BidResponse struct {
	*queries.BidView
}

func FromBidViews(views []*queries.BidView) []*BidResponse {
	res := make([]*BidResponse, len(views))
	for i, v := range views {
		res[i] = &BidResponse{BidView: v}
	}
	return res
}

// BidResultResponse is returned for every PlaceBid call, whatever the status code.
type BidResultResponse struct {
	Success bool         `json:"success"`
	Outcome string       `json:"outcome"`
	Message string       `json:"message"`
	Bid     *BidResponse `json:"bid,omitempty"`
}

func FromBidResult(r *commands.BidResult) *BidResultResponse {
	res := &BidResultResponse{
		Success: r.Success,
		Outcome: string(r.Outcome),
		Message: r.Message,
	}
	if r.Bid != nil {
		res.Bid = &BidResponse{BidView: queries.NewBidView(r.Bid)}
	}
	return res
}

type ReconciliationResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	BidsReconciled int     `json:"bids_reconciled"`
	WinnerID       *string `json:"winner_id,omitempty"`
	WinningAmount  *string `json:"winning_amount,omitempty"`
}

func FromReconciliationResult(r *commands.ReconciliationResult) *ReconciliationResponse {
	res := &ReconciliationResponse{
		Success:        r.Success,
		Message:        r.Message,
		BidsReconciled: r.BidsReconciled,
	}
	if r.WinnerID != nil {
		id := r.WinnerID.String()
		res.WinnerID = &id
	}
	if r.WinningAmount != nil {
		amount := r.WinningAmount.String()
		res.WinningAmount = &amount
	}
	return res
}
