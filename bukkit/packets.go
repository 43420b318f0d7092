package bukkit

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/oriumgames/notchity"
)

// Title packet names.
const (
	packetTitle           = "PacketPlayOutTitle"
	packetTitlesAnimation = "ClientboundSetTitlesAnimationPacket"
	packetTitleText       = "ClientboundSetTitleTextPacket"
	packetSubtitleText    = "ClientboundSetSubtitleTextPacket"
	titleActionTimes      = "TIMES"
	titleActionTitle      = "TITLE"
	titleActionSubtitle   = "SUBTITLE"
	colorPrefix           = "§x"
	colorSectionSign      = "§"
)

// TitlePackets returns the title packets: one combined packet type with an
// action from 1.8, split packets from 1.17. Titles do not exist before 1.8.
// The subtitle is sent before the title so both appear together.
func (a *adapter) TitlePackets(t notchity.Title) ([]notchity.Packet, error) {
	if err := notchity.RequireSince(notchity.CapTitle, a.version, v1_8); err != nil {
		return nil, err
	}

	fadeIn, stay, fadeOut := notchity.Ticks(t.FadeIn), notchity.Ticks(t.Stay), notchity.Ticks(t.FadeOut)

	if a.version.Less(v1_17) {
		pks := []notchity.Packet{{
			Name: packetTitle,
			Fields: map[string]any{
				"Action":  titleActionTimes,
				"FadeIn":  fadeIn,
				"Stay":    stay,
				"FadeOut": fadeOut,
			},
		}}
		if t.Subtitle != "" {
			pks = append(pks, notchity.Packet{
				Name:   packetTitle,
				Fields: map[string]any{"Action": titleActionSubtitle, "Text": notchity.ChatJSON(t.Subtitle)},
			})
		}
		return append(pks, notchity.Packet{
			Name:   packetTitle,
			Fields: map[string]any{"Action": titleActionTitle, "Text": notchity.ChatJSON(t.Title)},
		}), nil
	}

	pks := []notchity.Packet{{
		Name:   packetTitlesAnimation,
		Fields: map[string]any{"FadeIn": fadeIn, "Stay": stay, "FadeOut": fadeOut},
	}}
	if t.Subtitle != "" {
		pks = append(pks, notchity.Packet{
			Name:   packetSubtitleText,
			Fields: map[string]any{"Text": notchity.ChatJSON(t.Subtitle)},
		})
	}
	return append(pks, notchity.Packet{
		Name:   packetTitleText,
		Fields: map[string]any{"Text": notchity.ChatJSON(t.Title)},
	}), nil
}

// FormatColor returns the §x§r§r§g§g§b§b hex colour code available from 1.16.
func (a *adapter) FormatColor(c color.RGBA) (string, error) {
	if err := notchity.RequireSince(notchity.CapHexColor, a.version, v1_16); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(colorPrefix)
	for _, r := range fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B) {
		sb.WriteString(colorSectionSign)
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
