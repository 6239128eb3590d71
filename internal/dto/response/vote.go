package response

// VoteStateResponse is the observable vote state after a ledger call.
// ViewerVote is "up", "down" or "" when no vote is held.
type VoteStateResponse struct {
	ReviewID   int64  `json:"review_id"`
	Upvotes    int64  `json:"upvotes"`
	Downvotes  int64  `json:"downvotes"`
	ViewerVote string `json:"viewer_vote"`
}

// VoterListResponse is one page of a review's voter list.
type VoterListResponse struct {
	Items   []UserSummary `json:"items"`
	Total   int64         `json:"total"`
	HasMore bool          `json:"has_more"`
}
