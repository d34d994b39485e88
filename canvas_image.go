package weekit

// DrawImage copies img to window position (x, y), its lower-left corner.
// The image is uploaded on first use and stays uploaded until
// Image.Destroy. Paint and transform do not apply.
func (c *Canvas) DrawImage(x, y float32, img *Image) error {
	if !c.live() || img == nil {
		return nil
	}
	h, err := img.Upload(c.surf)
	if err != nil {
		return err
	}
	c.surf.SetPixels(int(x), int(y), h, img.Width, img.Height)
	return nil
}

// MakeImage copies a raw bottom-up R, G, B, A buffer of w by h pixels to
// (x, y).
func (c *Canvas) MakeImage(x, y float32, w, h int, pix []byte) error {
	img, err := NewImage(w, h, pix)
	if err != nil {
		return err
	}
	defer img.Destroy()
	return c.DrawImage(x, y, img)
}

// Image loads a JPEG file and copies its w by h lower-left region to
// (x, y). The platform image is released before returning.
func (c *Canvas) Image(x, y float32, w, h int, path string) error {
	if !c.live() {
		return nil
	}
	img, err := LoadJPEG(path)
	if err != nil {
		return err
	}
	handle, err := img.Upload(c.surf)
	if err != nil {
		return err
	}
	defer img.Destroy()
	c.surf.SetPixels(int(x), int(y), handle, min(w, img.Width), min(h, img.Height))
	return nil
}
