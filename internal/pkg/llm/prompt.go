package llm

import (
	"FeedSeeder/internal/pkg/consts"

	"github.com/tmc/langchaingo/prompts"
)

const (
	PostPromptTpl    = "Generate a very short, concise social media post (1-2 sentences, less than 200 characters) on the topic '{{.topic}}'. Be creative and engaging."
	CommentPromptTpl = "Generate a brief, relevant comment (1-2 sentences, less than 100 characters) responding to this social media post: '{{.excerpt}}...'"
)

var (
	postPrompt    = prompts.NewPromptTemplate(PostPromptTpl, []string{"topic"})
	commentPrompt = prompts.NewPromptTemplate(CommentPromptTpl, []string{"excerpt"})
)

// PostPrompt 帖子正文提示词
func PostPrompt(topic string) (string, error) {
	return postPrompt.Format(map[string]any{"topic": topic})
}

// CommentPrompt 评论提示词，只带帖子正文的前 250 个字符
func CommentPrompt(postContent string) (string, error) {
	return commentPrompt.Format(map[string]any{
		"excerpt": truncateRunes(postContent, consts.CommentExcerptRunes),
	})
}
