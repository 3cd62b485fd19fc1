package policy

import "newshub/internal/models"

// Правила доступа: автор или администратор. Функции чистые,
// обработчики обязаны прервать операцию при отказе.

func CanModifyPost(actor *models.User, post *models.Post) bool {
	if actor == nil {
		return false
	}
	return actor.ID == post.AuthorID || actor.IsAdmin
}

func CanModifyComment(actor *models.User, comment *models.Comment) bool {
	if actor == nil {
		return false
	}
	return actor.ID == comment.AuthorID || actor.IsAdmin
}

func CanAccessAdmin(actor *models.User) bool {
	return actor != nil && actor.IsAdmin
}
