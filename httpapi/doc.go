// Package httpapi exposes a session.Controller over HTTP with gin.
//
// Routes:
//
//	GET    /grid                   grid snapshot (size, roles, walls, ASCII)
//	POST   /grid                   {"width":W,"height":H} reconfigure
//	POST   /grid/toggle            {"x":X,"y":Y} flip a wall
//	POST   /grid/start             {"x":X,"y":Y} move the start
//	POST   /grid/end               {"x":X,"y":Y} move the end
//	POST   /grid/reset             clear walls and roles
//	POST   /session                {"strategy":"astar","mode":"step"|"run"}
//	POST   /session/step?n=K       advance the active session up to K steps
//	GET    /session                result of the latest session
//	DELETE /session                cancel the active session
//	GET    /session/path.geojson   latest found path as a GeoJSON Feature
//	GET    /session/map.geojson    latest found path plus walls as a FeatureCollection
//	GET    /metrics                Prometheus exposition
//
// Errors are JSON objects {"error": "..."}. Invalid input maps to 400, a
// busy controller to 409 and a missing session or path to 404.
//
// Every route except /metrics is brotli encoded when the request carries
// Accept-Encoding: br. /metrics negotiates its own encoding.
package httpapi
