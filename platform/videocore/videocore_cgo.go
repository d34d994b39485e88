//go:build linux && cgo && !novideocore && (arm || arm64)

package videocore

/*
#cgo CFLAGS: -I/opt/vc/include -I/opt/vc/include/interface/vcos/pthreads -I/opt/vc/include/interface/vmcs_host/linux
#cgo LDFLAGS: -L/opt/vc/lib -lbrcmEGL -lbrcmOpenVG -lbcm_host

#include <stdlib.h>
#include <string.h>
#include "bcm_host.h"
#include "EGL/egl.h"
#include "VG/openvg.h"

static DISPMANX_ELEMENT_HANDLE_T weekit_element_add(DISPMANX_DISPLAY_HANDLE_T disp, EGL_DISPMANX_WINDOW_T *win, int32_t x, int32_t y, int32_t w, int32_t h) {
	VC_RECT_T dst, src;
	VC_DISPMANX_ALPHA_T alpha = { DISPMANX_FLAGS_ALPHA_FIXED_ALL_PIXELS, 255, 0 };
	vc_dispmanx_rect_set(&dst, x, y, w, h);
	vc_dispmanx_rect_set(&src, 0, 0, w << 16, h << 16);
	DISPMANX_UPDATE_HANDLE_T u = vc_dispmanx_update_start(0);
	DISPMANX_ELEMENT_HANDLE_T e = vc_dispmanx_element_add(u, disp, 0, &dst, 0, &src,
		DISPMANX_PROTECTION_NONE, &alpha, 0, 0);
	vc_dispmanx_update_submit_sync(u);
	win->element = e;
	win->width = w;
	win->height = h;
	return e;
}

static int weekit_element_opacity(DISPMANX_ELEMENT_HANDLE_T e, uint8_t alpha) {
	DISPMANX_UPDATE_HANDLE_T u = vc_dispmanx_update_start(0);
	int r = vc_dispmanx_element_change_attributes(u, e, 1 << 1, 0, alpha, NULL, NULL, 0, 0);
	vc_dispmanx_update_submit_sync(u);
	return r;
}

static int weekit_element_move(DISPMANX_ELEMENT_HANDLE_T e, int32_t x, int32_t y, int32_t w, int32_t h) {
	VC_RECT_T dst;
	vc_dispmanx_rect_set(&dst, x, y, w, h);
	DISPMANX_UPDATE_HANDLE_T u = vc_dispmanx_update_start(0);
	int r = vc_dispmanx_element_change_attributes(u, e, 1 << 2, 0, 0, &dst, NULL, 0, 0);
	vc_dispmanx_update_submit_sync(u);
	return r;
}

static void weekit_element_remove(DISPMANX_ELEMENT_HANDLE_T e) {
	DISPMANX_UPDATE_HANDLE_T u = vc_dispmanx_update_start(0);
	vc_dispmanx_element_remove(u, e);
	vc_dispmanx_update_submit_sync(u);
}

static EGLConfig weekit_choose_config(EGLDisplay disp) {
	static const EGLint attribs[] = {
		EGL_RED_SIZE, 8,
		EGL_GREEN_SIZE, 8,
		EGL_BLUE_SIZE, 8,
		EGL_ALPHA_SIZE, 8,
		EGL_SURFACE_TYPE, EGL_WINDOW_BIT,
		EGL_NONE
	};
	EGLConfig cfg = NULL;
	EGLint n = 0;
	if (!eglChooseConfig(disp, attribs, &cfg, 1, &n) || n < 1) {
		return NULL;
	}
	return cfg;
}
*/
import "C"

import (
	"fmt"
	"image"
	"runtime"
	"unsafe"

	"github.com/weekit/weekit"
)

const supported = true

// Platform is a VideoCore display connection.
type Platform struct {
	disp    C.EGLDisplay
	dispman C.DISPMANX_DISPLAY_HANDLE_T
	screen  image.Point
}

// New initializes the VideoCore host interface and the EGL display, bound
// to OpenVG. cfg is ignored: the screen size comes from the firmware.
func New(cfg weekit.PlatformConfig) (weekit.Platform, error) {
	runtime.LockOSThread()
	C.bcm_host_init()

	disp := C.eglGetDisplay(nil)
	if disp == nil {
		return nil, fmt.Errorf("%w: eglGetDisplay", weekit.ErrDisplayUnavailable)
	}
	if C.eglInitialize(disp, nil, nil) == C.EGL_FALSE {
		return nil, fmt.Errorf("%w: eglInitialize: %v", weekit.ErrDisplayUnavailable, eglErr())
	}
	if C.eglBindAPI(C.EGL_OPENVG_API) == C.EGL_FALSE {
		C.eglTerminate(disp)
		return nil, fmt.Errorf("%w: eglBindAPI: %v", weekit.ErrContext, eglErr())
	}

	var w, h C.uint32_t
	if C.graphics_get_display_size(0, &w, &h) < 0 {
		C.eglTerminate(disp)
		return nil, fmt.Errorf("%w: graphics_get_display_size failed", weekit.ErrDisplayUnavailable)
	}
	return &Platform{disp: disp, screen: image.Pt(int(w), int(h))}, nil
}

func (p *Platform) Name() string { return Name }

func (p *Platform) ScreenSize() (int, int, error) {
	return p.screen.X, p.screen.Y, nil
}

// Open creates the DispmanX element for window, the EGL window surface
// on it and an OpenVG context, and makes them current.
func (p *Platform) Open(window image.Rectangle) (weekit.Surface, error) {
	cfg := C.weekit_choose_config(p.disp)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %v", weekit.ErrNoConfig, eglErr())
	}
	ctx := C.eglCreateContext(p.disp, cfg, nil, nil)
	if ctx == nil {
		return nil, fmt.Errorf("%w: %v", weekit.ErrContext, eglErr())
	}

	if p.dispman == 0 {
		p.dispman = C.vc_dispmanx_display_open(0)
	}
	win := (*C.EGL_DISPMANX_WINDOW_T)(C.calloc(1, C.size_t(unsafe.Sizeof(C.EGL_DISPMANX_WINDOW_T{}))))
	elem := C.weekit_element_add(p.dispman, win,
		C.int32_t(window.Min.X), C.int32_t(window.Min.Y),
		C.int32_t(window.Dx()), C.int32_t(window.Dy()))

	surf := C.eglCreateWindowSurface(p.disp, cfg, C.EGLNativeWindowType(unsafe.Pointer(win)), nil)
	if surf == nil {
		err := eglErr()
		C.weekit_element_remove(elem)
		C.free(unsafe.Pointer(win))
		C.eglDestroyContext(p.disp, ctx)
		return nil, fmt.Errorf("%w: %v", weekit.ErrSurface, err)
	}
	if C.eglSurfaceAttrib(p.disp, surf, C.EGL_SWAP_BEHAVIOR, C.EGL_BUFFER_PRESERVED) == C.EGL_FALSE {
		weekit.Logger().Warn("videocore: buffer preservation unsupported", "err", eglErr())
	}
	if C.eglMakeCurrent(p.disp, surf, surf, ctx) == C.EGL_FALSE {
		err := eglErr()
		C.eglDestroySurface(p.disp, surf)
		C.weekit_element_remove(elem)
		C.free(unsafe.Pointer(win))
		C.eglDestroyContext(p.disp, ctx)
		return nil, fmt.Errorf("%w: eglMakeCurrent: %v", weekit.ErrContext, err)
	}

	s := &Surface{
		p:      p,
		ctx:    ctx,
		surf:   surf,
		win:    win,
		elem:   elem,
		window: window,
		images: make(map[weekit.ImageHandle]C.VGImage),
	}
	s.path = C.vgCreatePath(C.VG_PATH_FORMAT_STANDARD, C.VG_PATH_DATATYPE_F, 1, 0, 0, 0, C.VG_PATH_CAPABILITY_APPEND_TO)
	s.fill = C.vgCreatePaint()
	s.stroke = C.vgCreatePaint()
	C.vgSetPaint(s.fill, C.VG_FILL_PATH)
	C.vgSetPaint(s.stroke, C.VG_STROKE_PATH)
	C.vgSeti(C.VG_MATRIX_MODE, C.VG_MATRIX_PATH_USER_TO_SURFACE)
	s.SetFillRule(weekit.EvenOdd)
	return s, nil
}

// Close terminates the EGL display and closes the DispmanX display.
func (p *Platform) Close() error {
	C.eglTerminate(p.disp)
	if p.dispman != 0 {
		C.vc_dispmanx_display_close(p.dispman)
		p.dispman = 0
	}
	runtime.UnlockOSThread()
	return nil
}

// Surface is an EGL window surface with its OpenVG context.
type Surface struct {
	p      *Platform
	ctx    C.EGLContext
	surf   C.EGLSurface
	win    *C.EGL_DISPMANX_WINDOW_T
	elem   C.DISPMANX_ELEMENT_HANDLE_T
	window image.Rectangle

	path   C.VGPath
	fill   C.VGPaint
	stroke C.VGPaint

	images map[weekit.ImageHandle]C.VGImage
	next   weekit.ImageHandle
	closed bool
}

func floats(v []float32) *C.VGfloat {
	if len(v) == 0 {
		return nil
	}
	return (*C.VGfloat)(unsafe.Pointer(&v[0]))
}

func (s *Surface) SetPaint(p weekit.Paint, mode weekit.PaintMode) {
	spec := specFor(p)
	if mode&weekit.PaintFill != 0 {
		applyPaint(s.fill, spec)
	}
	if mode&weekit.PaintStroke != 0 {
		applyPaint(s.stroke, spec)
	}
}

func applyPaint(paint C.VGPaint, spec paintSpec) {
	switch spec.kind {
	case solidPaint:
		C.vgSetParameteri(C.VGHandle(paint), C.VG_PAINT_TYPE, C.VG_PAINT_TYPE_COLOR)
		C.vgSetParameterfv(C.VGHandle(paint), C.VG_PAINT_COLOR, 4, floats(spec.color[:]))
		return
	case linearPaint:
		C.vgSetParameteri(C.VGHandle(paint), C.VG_PAINT_TYPE, C.VG_PAINT_TYPE_LINEAR_GRADIENT)
		C.vgSetParameterfv(C.VGHandle(paint), C.VG_PAINT_LINEAR_GRADIENT, 4, floats(spec.geometry))
	case radialPaint:
		C.vgSetParameteri(C.VGHandle(paint), C.VG_PAINT_TYPE, C.VG_PAINT_TYPE_RADIAL_GRADIENT)
		C.vgSetParameterfv(C.VGHandle(paint), C.VG_PAINT_RADIAL_GRADIENT, 5, floats(spec.geometry))
	}
	spread := C.VGint(C.VG_COLOR_RAMP_SPREAD_PAD)
	switch spec.spread {
	case weekit.SpreadRepeat:
		spread = C.VG_COLOR_RAMP_SPREAD_REPEAT
	case weekit.SpreadReflect:
		spread = C.VG_COLOR_RAMP_SPREAD_REFLECT
	}
	C.vgSetParameteri(C.VGHandle(paint), C.VG_PAINT_COLOR_RAMP_SPREAD_MODE, spread)
	C.vgSetParameteri(C.VGHandle(paint), C.VG_PAINT_COLOR_RAMP_PREMULTIPLIED, C.VG_FALSE)
	C.vgSetParameterfv(C.VGHandle(paint), C.VG_PAINT_COLOR_RAMP_STOPS, C.VGint(len(spec.stops)), floats(spec.stops))
}

func (s *Surface) SetStroke(st weekit.StrokeStyle) {
	C.vgSetf(C.VG_STROKE_LINE_WIDTH, C.VGfloat(st.Width))
	C.vgSeti(C.VG_STROKE_CAP_STYLE, C.VGint(C.VG_CAP_BUTT)+C.VGint(st.Cap))
	C.vgSeti(C.VG_STROKE_JOIN_STYLE, C.VGint(C.VG_JOIN_MITER)+C.VGint(st.Join))
	C.vgSetf(C.VG_STROKE_MITER_LIMIT, C.VGfloat(st.MiterLimit))
}

func (s *Surface) SetFillRule(r weekit.FillRule) {
	if s.closed {
		return
	}
	rule := C.VGint(C.VG_EVEN_ODD)
	if r == weekit.NonZero {
		rule = C.VG_NON_ZERO
	}
	C.vgSeti(C.VG_FILL_RULE, rule)
}

func (s *Surface) SetMatrix(m weekit.Matrix) {
	v := m.VG()
	C.vgLoadMatrix(floats(v[:]))
}

func (s *Surface) SetScissor(r image.Rectangle, enabled bool) {
	if !enabled {
		C.vgSeti(C.VG_SCISSORING, C.VG_FALSE)
		return
	}
	rect := [4]C.VGint{C.VGint(r.Min.X), C.VGint(r.Min.Y), C.VGint(r.Dx()), C.VGint(r.Dy())}
	C.vgSetiv(C.VG_SCISSOR_RECTS, 4, &rect[0])
	C.vgSeti(C.VG_SCISSORING, C.VG_TRUE)
}

func (s *Surface) SetClearColor(c weekit.Color) {
	C.vgSetfv(C.VG_CLEAR_COLOR, 4, floats(c[:]))
}

func (s *Surface) Clear(r image.Rectangle) {
	if s.closed {
		return
	}
	C.vgClear(C.VGint(r.Min.X), C.VGint(r.Min.Y), C.VGint(r.Dx()), C.VGint(r.Dy()))
}

func (s *Surface) DrawPath(p *weekit.Path, mode weekit.PaintMode) {
	if s.closed {
		return
	}
	segs, coords := pathData(p)
	if len(segs) == 0 {
		return
	}
	C.vgClearPath(s.path, C.VG_PATH_CAPABILITY_APPEND_TO)
	var cp unsafe.Pointer
	if len(coords) > 0 {
		cp = unsafe.Pointer(&coords[0])
	}
	C.vgAppendPathData(s.path, C.VGint(len(segs)), (*C.VGubyte)(unsafe.Pointer(&segs[0])), cp)

	var vm C.VGbitfield
	if mode&weekit.PaintFill != 0 {
		vm |= C.VG_FILL_PATH
	}
	if mode&weekit.PaintStroke != 0 {
		vm |= C.VG_STROKE_PATH
	}
	C.vgDrawPath(s.path, vm)
}

func vgFormat(f weekit.PixelFormat) (C.VGImageFormat, bool) {
	switch f {
	case weekit.FormatRGBA8888:
		return C.VG_sRGBA_8888, true
	case weekit.FormatABGR8888:
		return C.VG_sABGR_8888, true
	}
	return 0, false
}

func (s *Surface) CreateImage(format weekit.PixelFormat, w, h int, pix []byte, stride int) (weekit.ImageHandle, error) {
	if s.closed {
		return 0, weekit.ErrSessionClosed
	}
	vf, ok := vgFormat(format)
	if !ok {
		return 0, &weekit.DrawError{Code: weekit.CodeUnsupportedFormat, Op: "CreateImage"}
	}
	if w <= 0 || h <= 0 || len(pix) < stride*(h-1)+w*4 {
		return 0, &weekit.DrawError{Code: weekit.CodeIllegalArgument, Op: "CreateImage"}
	}
	img := C.vgCreateImage(vf, C.VGint(w), C.VGint(h), C.VG_IMAGE_QUALITY_BETTER)
	if img == 0 {
		if err := s.Err(); err != nil {
			return 0, err
		}
		return 0, &weekit.DrawError{Code: weekit.CodeOutOfMemory, Op: "CreateImage"}
	}
	C.vgImageSubData(img, unsafe.Pointer(&pix[0]), C.VGint(stride), vf, 0, 0, C.VGint(w), C.VGint(h))
	s.next++
	s.images[s.next] = img
	return s.next, nil
}

func (s *Surface) SetPixels(x, y int, handle weekit.ImageHandle, w, h int) {
	if s.closed {
		return
	}
	// An unknown handle reaches OpenVG as 0 and raises VG_BAD_HANDLE_ERROR.
	img := s.images[handle]
	C.vgSetPixels(C.VGint(x), C.VGint(y), img, 0, 0, C.VGint(w), C.VGint(h))
}

func (s *Surface) DestroyImage(handle weekit.ImageHandle) {
	img, ok := s.images[handle]
	if !ok {
		return
	}
	C.vgDestroyImage(img)
	delete(s.images, handle)
}

func (s *Surface) ReadPixels(dst []byte, x, y, w, h int) error {
	if s.closed {
		return weekit.ErrSessionClosed
	}
	if w <= 0 || h <= 0 || len(dst) < w*h*4 {
		return &weekit.DrawError{Code: weekit.CodeIllegalArgument, Op: "ReadPixels"}
	}
	vf, _ := vgFormat(weekit.NativeFormat())
	C.vgReadPixels(unsafe.Pointer(&dst[0]), C.VGint(w*4), vf, C.VGint(x), C.VGint(y), C.VGint(w), C.VGint(h))
	return s.Err()
}

// Err returns the OpenVG error flag as a *weekit.DrawError.
func (s *Surface) Err() error {
	code := C.vgGetError()
	if code == C.VG_NO_ERROR {
		return nil
	}
	return &weekit.DrawError{Code: int(code)}
}

func (s *Surface) Swap() error {
	if s.closed {
		return weekit.ErrSessionClosed
	}
	if C.eglSwapBuffers(s.p.disp, s.surf) == C.EGL_FALSE {
		return fmt.Errorf("videocore: eglSwapBuffers: %v", eglErr())
	}
	return nil
}

func (s *Surface) SetOpacity(alpha uint8) error {
	if r := C.weekit_element_opacity(s.elem, C.uint8_t(alpha)); r != 0 {
		return fmt.Errorf("videocore: change element opacity: %d", int(r))
	}
	return nil
}

func (s *Surface) Move(x, y int) error {
	r := C.weekit_element_move(s.elem, C.int32_t(x), C.int32_t(y), C.int32_t(s.window.Dx()), C.int32_t(s.window.Dy()))
	if r != 0 {
		return fmt.Errorf("videocore: move element: %d", int(r))
	}
	s.window = s.window.Add(image.Pt(x, y).Sub(s.window.Min))
	return nil
}

// Close presents the last frame, then unbinds and destroys the surface
// and the context and removes the DispmanX element.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for h, img := range s.images {
		C.vgDestroyImage(img)
		delete(s.images, h)
	}
	C.vgDestroyPath(s.path)
	C.vgDestroyPaint(s.fill)
	C.vgDestroyPaint(s.stroke)

	var err error
	if C.eglSwapBuffers(s.p.disp, s.surf) == C.EGL_FALSE {
		err = fmt.Errorf("videocore: eglSwapBuffers: %v", eglErr())
	}
	C.eglMakeCurrent(s.p.disp, nil, nil, nil)
	C.eglDestroySurface(s.p.disp, s.surf)
	C.eglDestroyContext(s.p.disp, s.ctx)
	C.weekit_element_remove(s.elem)
	C.free(unsafe.Pointer(s.win))
	return err
}

func eglErr() error {
	return fmt.Errorf("egl error 0x%x", int(C.eglGetError()))
}
