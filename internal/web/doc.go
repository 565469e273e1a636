// Package web serves the toolbox as server-rendered pages.
//
// Every route lives under a configurable base path:
//
//	GET  /                                   home with one card per tool
//	GET  /tools/markdown                     editor and preview
//	POST /tools/markdown                     save the buffer
//	POST /tools/markdown/preview             rendered fragment for live preview
//	POST /tools/markdown/export              markdown-export.html
//	POST /tools/markdown/export.pdf          markdown-export.pdf
//	GET  /tools/pdf-merge                    file list and notice
//	POST /tools/pdf-merge/files              multipart upload, field "files"
//	POST /tools/pdf-merge/files/{i}/{op}     op is up, down or remove
//	POST /tools/pdf-merge/clear              empty the list
//	POST /tools/pdf-merge/merge              merged-document.pdf
//	GET  /static/{name}.css                  app, preview and highlight styles
//	GET  /health/live, /health/ready         probes
//
// State lives in a session.Store keyed by a cookie, so two browsers never
// see each other's buffer or file list.
package web
