package about

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/settingsdeck/internal/settings"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := settings.NewRegistry(nil)
	Register(reg)

	item, ok := reg.Item(DeleteConfigKey)
	require.True(t, ok)
	assert.Equal(t, settings.KindButton, item.Kind)
	assert.Equal(t, "删除配置", item.ButtonText)
	assert.Nil(t, item.OnClick)
	assert.Equal(t, []string{TabName}, reg.Names())
}
