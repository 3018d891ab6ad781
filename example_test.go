package audscene_test

import (
	"fmt"
	"time"

	"github.com/ik5/audscene"
)

// Example shows the playback protocol: open, seek until ready, then
// pull one block per callback period.
func Example() {
	scene, err := audscene.Open("scene.yaml", 48000, 512, 8, time.Millisecond)
	if err != nil {
		panic(err)
	}
	defer scene.Close()

	for !scene.Seek(0) {
		time.Sleep(time.Millisecond)
	}

	buffers := make([][]float32, scene.FileSources())
	for i := range buffers {
		buffers[i] = make([]float32, scene.Blocksize())
	}

	// Inside the audio callback: never blocks, never allocates.
	if err := scene.AudioData(buffers, true); err != nil {
		fmt.Println("pull:", err)
	}
	ref := scene.ReferenceTransform(scene.Position())
	fmt.Println("listener at", ref.Pos)
}
