package consts

const (
	MimePrefixImage = "image"
)

const (
	// HomeFeedLatestSize 首页最新内容条数
	HomeFeedLatestSize = 5
	// HomeFeedPodcastSize 首页播客内容条数
	HomeFeedPodcastSize = 3
	// CuratedLatestSize 未传分页参数时返回的最新内容条数
	CuratedLatestSize = 5
)

const (
	// DefaultPageLimit 分页默认条数, 与 pageNumber=0 共同构成"未传分页参数"哨兵
	DefaultPageLimit = 10
)
