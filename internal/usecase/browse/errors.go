package browse

import "errors"

// ErrArticleNotFound is returned when a toggle token carries an article
// id the store cannot resolve. Articles are never deleted, so this only
// happens with tokens forged or carried over from another deployment.
var ErrArticleNotFound = errors.New("article not found")
