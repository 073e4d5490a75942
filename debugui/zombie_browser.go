package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nightfall/game"
)

// ZombieBrowser lists live zombies nearest the player first.
type ZombieBrowser struct {
	maxPerPage  int
	currentPage int
}

func NewZombieBrowser(maxPerPage int) *ZombieBrowser {
	return &ZombieBrowser{maxPerPage: maxPerPage}
}

func (zb *ZombieBrowser) Render(sim *game.Simulation) {
	if !imgui.BeginV("Zombies", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := sim.Snapshot()
	zombies := SortByDistance(snap.Zombies, snap.Player.Box.Center())

	totalPages := max(1, (len(zombies)+zb.maxPerPage-1)/zb.maxPerPage)
	zb.currentPage = min(zb.currentPage, totalPages-1)
	start := zb.currentPage * zb.maxPerPage
	end := min(start+zb.maxPerPage, len(zombies))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ZombieTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Variant")
		imgui.TableSetupColumn("Health")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Distance")
		imgui.TableHeadersRow()

		center := snap.Player.Box.Center()
		for _, z := range zombies[start:end] {
			c := z.Box.Center()
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(z.Variant)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.0f", z.Health))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.0f, %.0f", c.X, c.Y))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.0f", c.DistanceTo(center)))
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d zombies)", zb.currentPage+1, totalPages, len(zombies)))
	imgui.SameLine()
	if imgui.Button("Prev") && zb.currentPage > 0 {
		zb.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && zb.currentPage < totalPages-1 {
		zb.currentPage++
	}

	imgui.End()
}

// SortByDistance returns a copy of zombies ordered by centre distance to
// from, nearest first.
func SortByDistance(zombies []game.ZombieView, from game.Vec2) []game.ZombieView {
	out := make([]game.ZombieView, len(zombies))
	copy(out, zombies)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Box.Center().DistanceTo(from) < out[j].Box.Center().DistanceTo(from)
	})
	return out
}
