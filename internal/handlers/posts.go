package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/realtime"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/errors"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/utils"
)

const feedCacheTTL = 30 * time.Second

// postsHub carries like/comment notifications to post authors. Set once at
// startup; nil disables the emits.
var postsHub *realtime.Hub

func SetPostsHub(h *realtime.Hub) {
	postsHub = h
}

// notifyPostActivity tells an online author about activity on their post.
// Self-activity and muted "posts" prefs are skipped.
func notifyPostActivity(authorID, actorID, kind, postID string) {
	if postsHub == nil || authorID == actorID {
		return
	}
	if !notifyEnabled(authorID, "posts") {
		return
	}
	postsHub.PushNotification(authorID, gin.H{
		"type":    kind,
		"actorId": actorID,
		"postId":  postID,
	})
}

func feedCacheKey(userID string) string {
	return fmt.Sprintf("feed:%s", userID)
}

type createPostInput struct {
	Text  string   `json:"text"`
	Media string   `json:"media"`
	Tags  []string `json:"tags"`
}

// CreatePost handles POST /posts
func CreatePost(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input createPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("Invalid request"))
		return
	}
	if input.Text == "" && input.Media == "" {
		fail(c, errors.BadRequest("Post must have text or media"))
		return
	}

	post := models.Post{
		AuthorID: userID,
		Text:     utils.TruncateString(input.Text, 5000),
		Media:    input.Media,
		Tags:     pq.StringArray(input.Tags),
	}
	if err := database.DB.Create(&post).Error; err != nil {
		fail(c, errors.Internal("Failed to create post"))
		return
	}

	database.CacheInvalidate("feed:*")

	database.DB.Preload("Author").First(&post, "id = ?", post.ID)
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetFeed handles GET /posts/feed: own posts plus companion posts, newest
// first, briefly cached.
func GetFeed(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var cached []models.Post
	if err := database.CacheGet(feedCacheKey(userID), &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"posts": cached, "cached": true})
		return
	}

	companions, err := companionsOf(userID)
	if err != nil {
		fail(c, errors.Internal("Failed to fetch feed"))
		return
	}

	authorIDs := []string{userID}
	for _, u := range companions {
		authorIDs = append(authorIDs, u.ID)
	}

	var posts []models.Post
	if err := database.DB.Preload("Author").
		Where("author_id IN ?", authorIDs).
		Order("created_at desc").Limit(50).Find(&posts).Error; err != nil {
		fail(c, errors.Internal("Failed to fetch feed"))
		return
	}

	for i := range posts {
		database.DB.Model(&models.PostLike{}).Where("post_id = ?", posts[i].ID).Count(&posts[i].LikeCount)
		database.DB.Model(&models.PostComment{}).Where("post_id = ?", posts[i].ID).Count(&posts[i].CommentCount)
		var mine int64
		database.DB.Model(&models.PostLike{}).Where("post_id = ? AND user_id = ?", posts[i].ID, userID).Count(&mine)
		posts[i].LikedByMe = mine > 0
	}

	database.CacheSet(feedCacheKey(userID), posts, feedCacheTTL)
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// ToggleLike handles POST /posts/:id/like
func ToggleLike(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	postID := c.Param("id")

	var post models.Post
	if err := database.DB.Select("id, author_id").First(&post, "id = ?", postID).Error; err != nil {
		fail(c, errors.NotFound("Post not found"))
		return
	}

	var existing models.PostLike
	if err := database.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error; err == nil {
		database.DB.Delete(&existing)
		c.JSON(http.StatusOK, gin.H{"liked": false})
		return
	}

	like := models.PostLike{PostID: postID, UserID: userID}
	if err := database.DB.Create(&like).Error; err != nil {
		fail(c, errors.Internal("Failed to like post"))
		return
	}

	notifyPostActivity(post.AuthorID, userID, "POST_LIKE", postID)
	c.JSON(http.StatusOK, gin.H{"liked": true})
}

type addCommentInput struct {
	Text string `json:"text" binding:"required"`
}

// AddComment handles POST /posts/:id/comments
func AddComment(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	postID := c.Param("id")

	var input addCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, errors.BadRequest("Comment text required"))
		return
	}

	var post models.Post
	if err := database.DB.Select("id, author_id").First(&post, "id = ?", postID).Error; err != nil {
		fail(c, errors.NotFound("Post not found"))
		return
	}

	comment := models.PostComment{
		PostID: postID,
		UserID: userID,
		Text:   utils.TruncateString(input.Text, 2000),
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		fail(c, errors.Internal("Failed to add comment"))
		return
	}

	notifyPostActivity(post.AuthorID, userID, "POST_COMMENT", postID)

	database.DB.Preload("User").First(&comment, "id = ?", comment.ID)
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// GetComments handles GET /posts/:id/comments
func GetComments(c *gin.Context) {
	postID := c.Param("id")

	var comments []models.PostComment
	if err := database.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at asc").Find(&comments).Error; err != nil {
		fail(c, errors.Internal("Failed to fetch comments"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeleteComment handles DELETE /comments/:id (author only)
func DeleteComment(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	commentID := c.Param("id")

	var comment models.PostComment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		fail(c, errors.NotFound("Comment not found"))
		return
	}
	if comment.UserID != userID {
		fail(c, errors.Forbidden("You can only delete your own comments"))
		return
	}

	database.DB.Delete(&comment)
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// DeletePost handles DELETE /posts/:id (author only)
func DeletePost(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	postID := c.Param("id")

	var post models.Post
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		fail(c, errors.NotFound("Post not found"))
		return
	}
	if post.AuthorID != userID {
		fail(c, errors.Forbidden("You can only delete your own posts"))
		return
	}

	database.DB.Delete(&post)
	database.CacheInvalidate("feed:*")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
