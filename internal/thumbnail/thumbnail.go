// Package thumbnail downloads performer snapshot thumbnails
package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"

	"github.com/bcmk/camgrab/lib/cmdlib"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Download fetches the thumbnail and writes it to outputPath.
// With an empty outputPath the file is named after the model with an
// extension sniffed from the image data, snapshots come as jpeg or webp.
func Download(ctx context.Context, client *cmdlib.Client, thumbnailURL, modelID, outputPath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnailURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot query thumbnail for model %s, %v", modelID, err)
	}
	defer cmdlib.CloseBody(resp.Body)
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("thumbnail query status for model %s: %d", modelID, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("cannot read thumbnail for model %s, %v", modelID, err)
	}
	if outputPath == "" {
		outputPath = modelID + "_thumb" + imageExt(data)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

func imageExt(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ".jpg"
	}
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}
