package consts

const (
	// MediaPendingKey 已上传但尚未落库的对象账本 (hash: objectKey -> meta)
	MediaPendingKey = "media:pending"
	// HomeFeedCacheKey 首页聚合流缓存
	HomeFeedCacheKey = "content:home:feed"
)
