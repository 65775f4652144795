package layout

import "ogstudio/internal/style"

// composeDefault is the two-column hero: text on the left, logo panel on the right.
func composeDefault(f frame) []*Node {
	s, u := f.s, f.s.unit()
	colW := f.w - 2*s.Pad - s.Gap - s.Panel

	col := newColumn(s.Pad, 0, colW, 16*u, false)
	col.add(chip(f, chipLabels[f.card.Template]))
	col.add(textBlock(f.card.Title, s.Title, 1.05, colW, true, 3, f.st.Text))
	col.add(textBlock(f.card.Subtitle, s.Subtitle, 1.3, colW, false, 2, f.st.Subtext))
	nodes := col.centerIn(s.Pad, f.h-s.Pad)

	px := f.w - s.Pad - s.Panel
	py := (f.h - s.Panel) / 2
	inner := s.Panel * 260 / 300
	panel := &Node{
		Kind:        KindBox,
		X:           px,
		Y:           py,
		W:           s.Panel,
		H:           s.Panel,
		Fill:        f.st.Panel,
		Border:      f.st.Border,
		BorderWidth: 1,
		Radius:      32 * u,
		Children: []*Node{
			logoSlot(f, px+(s.Panel-inner)/2, py+(s.Panel-inner)/2, inner, s.Mark, FitContain, false),
		},
	}
	return append(nodes, panel)
}

// composeLaunch centres a logo mark, chip and headline.
func composeLaunch(f frame) []*Node {
	s, u := f.s, f.s.unit()
	colW := f.w - 3*s.Pad - 2*qrReserve(f)
	mark := s.Panel * 0.32

	col := newColumn((f.w-colW)/2, 0, colW, 20*u, true)
	col.add(&Node{
		Kind:     KindBox,
		W:        mark,
		H:        mark,
		Children: []*Node{logoSlot(f, 0, 0, mark, mark*0.6, FitContain, false)},
	})
	col.add(chip(f, chipLabels[f.card.Template]))
	col.add(textBlock(f.card.Title, s.Title*1.1, 1.05, colW, true, 2, f.st.Text))
	col.add(textBlock(f.card.Subtitle, s.Subtitle, 1.3, colW, false, 2, f.st.Subtext))
	return col.centerIn(s.Pad, f.h-s.Pad)
}

// composeBlog puts the headline at the top and a logo byline row at the bottom.
func composeBlog(f frame) []*Node {
	s, u := f.s, f.s.unit()
	colW := f.w - 2*s.Pad - qrReserve(f)

	bar := &Node{
		Kind:   KindBox,
		X:      s.Pad,
		Y:      s.Pad,
		W:      96 * u,
		H:      8 * u,
		Fill:   f.st.Brand,
		Radius: 4 * u,
	}

	col := newColumn(s.Pad, s.Pad+40*u, colW, 18*u, false)
	col.add(chip(f, chipLabels[f.card.Template]))
	col.add(textBlock(f.card.Title, s.Title*0.95, 1.05, colW, true, 2, f.st.Text))
	col.add(textBlock(f.card.Subtitle, s.Subtitle, 1.3, colW, false, 2, f.st.Subtext))

	avatar := s.Chip * 2
	fy := f.h - s.Pad - avatar
	dividerX := s.Pad + avatar + s.Gap/2
	divider := &Node{
		Kind:   KindBox,
		X:      dividerX,
		Y:      fy + avatar/2 - u,
		W:      f.w - s.Pad - qrReserve(f) - dividerX,
		H:      2 * u,
		Fill:   style.WithAlpha(f.st.Accent, 0x66),
		Radius: u,
	}

	nodes := []*Node{bar}
	nodes = append(nodes, col.nodes...)
	return append(nodes, logoSlot(f, s.Pad, fy, avatar, avatar*0.7, FitCover, true), divider)
}

// composeSpeaker shows a round avatar on the left and name and role on the right.
func composeSpeaker(f frame) []*Node {
	s, u := f.s, f.s.unit()
	d := min(f.h-2*s.Pad, s.Panel*1.15)
	ring := 8 * u

	ax, ay := s.Pad, (f.h-d)/2
	avatar := &Node{
		Kind:        KindBox,
		X:           ax,
		Y:           ay,
		W:           d,
		H:           d,
		Fill:        f.st.Panel,
		Border:      f.st.Brand,
		BorderWidth: 4 * u,
		Radius:      d / 2,
		Children: []*Node{
			logoSlot(f, ax+ring, ay+ring, d-2*ring, s.Mark, FitCover, true),
		},
	}

	colX := s.Pad + d + s.Gap*1.5
	colW := f.w - colX - s.Pad - qrReserve(f)
	col := newColumn(colX, 0, colW, 16*u, false)
	col.add(chip(f, chipLabels[f.card.Template]))
	col.add(textBlock(f.card.Title, s.Title*0.9, 1.05, colW, true, 2, f.st.Text))
	col.add(textBlock(f.card.Subtitle, s.Subtitle, 1.3, colW, false, 3, f.st.Subtext))

	return append([]*Node{avatar}, col.centerIn(s.Pad, f.h-s.Pad)...)
}

// composeProduct gives the right half of the card to a full-bleed logo.
func composeProduct(f frame) []*Node {
	s, u := f.s, f.s.unit()
	half := f.w / 2

	hero := &Node{
		Kind: KindBox,
		X:    half,
		Y:    0,
		W:    half,
		H:    f.h,
		Fill: f.st.Panel,
	}
	if f.card.Logo != "" {
		hero.Children = []*Node{{
			Kind: KindImage,
			X:    half,
			Y:    0,
			W:    half,
			H:    f.h,
			Src:  f.card.Logo,
			Fit:  FitCover,
		}}
	} else {
		mark := min(half, f.h) * 0.5
		hero.Children = []*Node{{
			Kind: KindCircle,
			X:    half + (half-mark)/2,
			Y:    (f.h - mark) / 2,
			W:    mark,
			H:    mark,
			Fill: f.st.Brand,
			Glow: mark / 2,
		}}
	}

	colW := half - s.Pad - s.Gap
	col := newColumn(s.Pad, 0, colW, 16*u, false)
	col.add(chip(f, chipLabels[f.card.Template]))
	col.add(textBlock(f.card.Title, s.Title*0.9, 1.05, colW, true, 3, f.st.Text))
	col.add(textBlock(f.card.Subtitle, s.Subtitle, 1.3, colW, false, 2, f.st.Subtext))

	return append([]*Node{hero}, col.centerIn(s.Pad, f.h-s.Pad)...)
}
