package main

import (
	"github.com/ridelens/ridelens/pkg"
	"github.com/ridelens/ridelens/pkg/datastructure"
	"github.com/ridelens/ridelens/pkg/ingest"
)

func main() {
	points, _, err := ingest.ReadTrajectoryFile("./data/ride_jogja.csv")
	if err != nil {
		panic(err)
	}
	markers, _, err := ingest.ReadMarkersFile("./data/ride_jogja_markers.csv")
	if err != nil {
		panic(err)
	}

	clip := datastructure.NewClip("ride-jogja", pkg.FRAME_RATE_STANDARD, points, markers)
	err = clip.WriteClip("./data/clips/ride-jogja.clip.bz2")
	if err != nil {
		panic(err)
	}
	_, err = datastructure.ReadClip("./data/clips/ride-jogja.clip.bz2")
	if err != nil {
		panic(err)
	}
}
