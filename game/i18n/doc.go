// Package i18n holds the message keys that actions report as error titles and
// messages, and the catalogs that render them in English and German.
//
// Results carry keys, never text. Transports resolve a language per request
// (the lang query parameter, then Accept-Language) and render with Text.
package i18n
