package v1

import (
	"context"

	"github.com/samber/lo"

	"github.com/sakura-notes/sakura/pkg/security"
	"github.com/sakura-notes/sakura/pkg/types"
)

const TOKEN_CONTEXT_KEY = "__sakura.token"

func InjectTokenClaim(ctx context.Context) (security.TokenClaims, bool) {
	val, ok := ctx.Value(TOKEN_CONTEXT_KEY).(security.TokenClaims)
	return val, ok
}

const LANGUAGE_CONTEXT_KEY = "__sakura.lang"

func InjectLanguage(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(LANGUAGE_CONTEXT_KEY).(string)
	return val, ok
}

func GetContentByClientLanguage[T any](c context.Context, enRes T, cnRes T) T {
	clientLang, _ := InjectLanguage(c)
	return lo.If(clientLang == types.LANGUAGE_CN_KEY, cnRes).Else(enRes)
}
