package consts

const (
	PostMaxOutputTokens    = 70
	CommentMaxOutputTokens = 50
	CommentExcerptRunes    = 250
)

const (
	UsersCollection       = "users"
	TopicsCollection      = "topics"
	FriendshipsCollection = "friendships"
	PostsCollection       = "posts"
	CommentsCollection    = "comments"
	LikesCollection       = "likes"
)
