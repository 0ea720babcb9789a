package main

import (
	"github.com/fogleman/gg"

	"rvos/kernel/kmain"
	"rvos/kernel/mm"
	"rvos/kernel/mm/pmm"
	"rvos/kernel/proc"
)

const (
	mapColumns  = 128
	mapCellSize = 4
	mapLegendH  = 40
)

// pageKind classifies a physical page on the memory map.
type pageKind uint8

const (
	pageFree pageKind = iota
	pageKernel
	pageTable
	pageAllocated
)

var pageColors = [...][3]float64{
	pageFree:      {1, 1, 1},
	pageKernel:    {0.55, 0.55, 0.55},
	pageTable:     {0.2, 0.4, 0.85},
	pageAllocated: {0.95, 0.6, 0.2},
}

// classifyPages returns one entry per page from the kernel base to the end
// of free RAM.
func classifyPages(layout kmain.Layout, sched *proc.Scheduler) []pageKind {
	pages := make([]pageKind, (layout.FreeRAMEnd-layout.KernelBase)>>mm.PageShift)
	index := func(addr uintptr) int { return int((addr - layout.KernelBase) >> mm.PageShift) }

	for i := 0; i < index(layout.FreeRAMStart); i++ {
		pages[i] = pageKernel
	}

	// Everything below the allocator cursor is in use.
	for addr := layout.FreeRAMStart; addr < pmm.GetStats().Next; addr += mm.PageSize {
		pages[index(addr)] = pageAllocated
	}

	sched.VisitProcesses(func(p *proc.Process) {
		p.PageTable().VisitTables(func(_ uint8, frame mm.Frame) {
			if i := index(frame.Address()); i >= 0 && i < len(pages) {
				pages[i] = pageTable
			}
		})
	})

	return pages
}

// renderMemoryMap draws one cell per physical page and saves the result as
// a PNG file.
func renderMemoryMap(path string, layout kmain.Layout, sched *proc.Scheduler) error {
	pages := classifyPages(layout, sched)
	rows := (len(pages) + mapColumns - 1) / mapColumns

	dc := gg.NewContext(mapColumns*mapCellSize, rows*mapCellSize+mapLegendH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for i, kind := range pages {
		c := pageColors[kind]
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawRectangle(float64(i%mapColumns*mapCellSize), float64(i/mapColumns*mapCellSize), mapCellSize, mapCellSize)
		dc.Fill()
	}

	legend := []struct {
		kind  pageKind
		label string
	}{
		{pageKernel, "kernel"},
		{pageTable, "page tables"},
		{pageAllocated, "allocated"},
		{pageFree, "free"},
	}

	y := float64(rows*mapCellSize) + 12
	for i, entry := range legend {
		x := float64(8 + i*120)
		c := pageColors[entry.kind]
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawRectangle(x, y, 10, 10)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.Stroke()
		dc.DrawString(entry.label, x+16, y+10)
	}

	return dc.SavePNG(path)
}
