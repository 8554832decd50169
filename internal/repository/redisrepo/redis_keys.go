package redisrepo

import "fmt"

const (
	INDEX_PAGE_KEY_PREFIX = "index_page"
	INDEX_PAGE_KEY        = "index_page:%d" // <page>
	POST_KEY              = "post:%d"       // <postID>
	USER_CACHE_KEY        = "user-cache:%s" // <userID>
)

func IndexPageKey(page int) string {
	return fmt.Sprintf(INDEX_PAGE_KEY, page)
}

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}
