package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	key, payload := ParseCallbackData(&tele.Callback{Data: "\\fshop_view|all"})
	assert.Equal(t, "shop_view", key)
	assert.Equal(t, "all", payload)

	key, payload = ParseCallbackData(&tele.Callback{Data: "\\fshop_cats"})
	assert.Equal(t, "shop_cats", key)
	assert.Empty(t, payload)

	// Item payloads keep their inner separator intact
	key, payload = ParseCallbackData(&tele.Callback{Data: "\\fshop_tog|42|all"})
	assert.Equal(t, "shop_tog", key)
	assert.Equal(t, "42|all", payload)

	key, payload = ParseCallbackData(nil)
	assert.Empty(t, key)
	assert.Empty(t, payload)
}

type payloadCtx struct {
	tele.Context
	cb *tele.Callback
}

func (p payloadCtx) Callback() *tele.Callback { return p.cb }

func TestPayloadIDRef(t *testing.T) {
	c := payloadCtx{cb: &tele.Callback{Data: "\\fshop_del|42|7"}}

	id, ref, err := PayloadIDRef(c, "|")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	assert.Equal(t, "7", ref)

	c = payloadCtx{cb: &tele.Callback{Data: "\\fshop_del|42"}}
	id, ref, err = PayloadIDRef(c, "|")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	assert.Empty(t, ref)

	c = payloadCtx{cb: &tele.Callback{Data: "\\fshop_del|nope|all"}}
	_, _, err = PayloadIDRef(c, "|")
	assert.Error(t, err)
}

func TestPayloadInt64(t *testing.T) {
	c := payloadCtx{cb: &tele.Callback{Data: "\\fadd_dept|3"}}
	id, err := PayloadInt64(c)
	require.NoError(t, err)
	assert.EqualValues(t, 3, id)
}
