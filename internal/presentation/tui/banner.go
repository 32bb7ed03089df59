package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs an ASCII art banner for Inquira.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Subtle gradient-like color scheme (Indigo/Violet)
	s1 := termenv.String("  _____                  _           ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String(" |_   _|                (_)          ").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String("   | |  _ __   __ _ _   _ _ _ __ __ _ ").Foreground(p.Color("#c084fc"))
	s4 := termenv.String("   | | | '_ \\ / _` | | | | | '__/ _` |").Foreground(p.Color("#e879f9"))
	s5 := termenv.String("  _| |_| | | | (_| | |_| | | | | (_| |").Foreground(p.Color("#f472b6"))
	s6 := termenv.String(" |_____|_| |_|\\__, |\\__,_|_|_|  \\__,_|").Foreground(p.Color("#fb7185"))
	s7 := termenv.String("                 | |                  ").Foreground(p.Color("#fb7185"))
	s8 := termenv.String("                 |_|                  ").Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println(s7)
	fmt.Println(s8)
	fmt.Println()
}
