// Package rfbenc implements the pixel-rectangle encoders used by the RFB
// (Remote Framebuffer) protocol described in RFC 6143, plus the Tight
// extension widely deployed by VNC servers.
//
// Each encoder is a pure function: given a rectangle of pixels in the
// canonical interior format (four bytes per pixel, R,G,B,pad) plus the
// client's negotiated PixelFormat, it returns the exact byte payload that
// belongs after the rectangle header in a FramebufferUpdate message. The
// handshake, rectangle framing, damage detection, and screen capture that
// surround these encoders are left to the caller.
package rfbenc
