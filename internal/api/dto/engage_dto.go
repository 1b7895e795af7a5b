package dto

// LikeToggleResult reports the like state after a toggle.
type LikeToggleResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// SubscriptionToggleResult reports the subscription state after a toggle.
type SubscriptionToggleResult struct {
	Subscribed      bool  `json:"subscribed"`
	SubscriberCount int64 `json:"subscriberCount"`
}

// ChannelListData lists the channels or subscribers of a user.
type ChannelListData struct {
	Users []OwnerBrief `json:"users"`
}

// WatchHistoryItem is one watch-history entry with its video.
type WatchHistoryItem struct {
	Video     VideoInfo `json:"video"`
	Rewatched int64     `json:"rewatched"`
}
