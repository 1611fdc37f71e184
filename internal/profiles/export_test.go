package profiles

// MapProfileError exposes the profile write error mapping.
var MapProfileError = mapProfileError
