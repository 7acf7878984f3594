package constant

// AsciiArtLogo is the application banner shown in the root command help.
const AsciiArtLogo = `
               _      _           _
     ___ _ __ | |_ __| | ___  ___| | __
    / __| '__|| __/ _` + "`" + ` |/ _ \/ __| |/ /
    \__ \ |   | || (_| |  __/ (__|   <
    |___/_|    \__\__,_|\___|\___|_|\_\
`
