// Package about registers the about tab.
package about

import "github.com/alexisbeaulieu97/settingsdeck/internal/settings"

const (
	TabName = "关于"
	// DeleteConfigKey is the button that wipes persisted settings.
	DeleteConfigKey = "about_delete_config"
)

// Group returns the about settings group. The delete button has no handler of
// its own; the host resolves it by DeleteConfigKey.
func Group() settings.Group {
	return settings.Group{
		Name:  TabName,
		Label: "关于",
		Items: []settings.Item{{
			Key:         DeleteConfigKey,
			Title:       "删除插件配置文件",
			Description: "删除插件的所有配置数据，此操作不可恢复",
			Kind:        settings.KindButton,
			ButtonText:  "删除配置",
		}},
	}
}

// Register adds the about group to reg.
func Register(reg *settings.Registry) {
	reg.RegisterGroup(Group())
}
