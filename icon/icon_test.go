package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/key"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Subtitle

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					So(Get(target), ShouldNotBeEmpty)
				})
			}
		})

		Convey("It falls back to plain for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(target), ShouldEqual, icons[target].plain)
		})

		Convey("It returns empty for an unregistered icon", func() {
			So(Get(Icon(0)), ShouldBeEmpty)
		})
	})
}
