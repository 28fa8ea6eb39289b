// Package qbittorrent provides a client for interacting with the qBittorrent Web API.
//
// This package wraps the autobrr/go-qbittorrent library to provide the
// higher-level interface torrentjanitor needs: a per-cycle snapshot of all
// torrents, per-torrent removal, and tracker reannounce.
//
// # Usage
//
//	client, err := qbittorrent.NewClient(ctx, host, username, password, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Snapshot of all torrents
//	torrents, err := client.FetchTorrents(ctx)
//
//	// Remove a torrent and its files
//	err = client.RemoveTorrent(ctx, hash, true)
package qbittorrent
